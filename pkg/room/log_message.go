package room

import (
	"blackjack-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages adds log messages, keeping only the most recent
// NOTE: must be called with the lock held
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// LogMessages returns a copy of the most recent log messages
func (d *Dealer) LogMessages() []*playable.LogMessage {
	d.lock.Lock()
	defer d.lock.Unlock()

	m := make([]*playable.LogMessage, len(d.logMessages))
	copy(m, d.logMessages)
	return m
}
