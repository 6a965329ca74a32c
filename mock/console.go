package mock

import "github.com/fwojciec/pagesnap"

var _ pagesnap.Console = (*Console)(nil)

// Console is a mock implementation of pagesnap.Console.
type Console struct {
	LogFn func(banner, body string) error
}

func (c *Console) Log(banner, body string) error {
	return c.LogFn(banner, body)
}

var _ pagesnap.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of pagesnap.Notifier.
type Notifier struct {
	NotifyFn func(message string) error
}

func (n *Notifier) Notify(message string) error {
	return n.NotifyFn(message)
}
