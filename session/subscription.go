package session

import "sync"

// subscription is the bookkeeping a Session keeps for one outstanding
// SUBSCRIBE, keyed by the id it generated for that subscription. It is
// live for the lifetime of the subscription rather than a single
// request/response round trip.
type subscription struct {
	id          string
	destination string
	onSubscribe func(error, string)
	onMessage   func(error, []byte)

	once sync.Once
}

// confirm fires onSubscribe exactly once, on either the RECEIPT that
// acknowledges the SUBSCRIBE frame or the first MESSAGE delivered for
// it, whichever arrives first.
func (s *subscription) confirm(err error) {
	s.once.Do(func() {
		s.onSubscribe(err, s.id)
	})
}
