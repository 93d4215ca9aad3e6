package views

import "sync/atomic"

// Token identifies one request issued by a view
type Token uint64

// Sequencer hands out increasing tokens. Only the latest token is current.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues a new token, superseding every earlier one
func (s *Sequencer) Next() Token {
	return Token(s.latest.Add(1))
}

// IsCurrent reports whether t is the most recently issued token
func (s *Sequencer) IsCurrent(t Token) bool {
	return Token(s.latest.Load()) == t
}

// Invalidate supersedes the current token without issuing a new one
func (s *Sequencer) Invalidate() {
	s.latest.Add(1)
}
