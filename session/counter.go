package session

import (
	"strconv"
	"sync/atomic"
)

// subscriptionCounter hands out subscription ids. It is process-wide
// rather than scoped to one Session, since subscription ids must stay
// unique even across independently constructed sessions when a caller
// holds several sessions against the same server concurrently.
var subscriptionCounter atomic.Uint64

// nextSubscriptionID returns a fresh id that no Session in this process
// has ever handed out before. Ids are not guaranteed to be contiguous;
// only uniqueness is promised.
func nextSubscriptionID() string {
	return strconv.FormatUint(subscriptionCounter.Add(1), 10)
}
