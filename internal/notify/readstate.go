package notify

import "sync"

// ReadState tracks which notification IDs each user has acknowledged.
// State lives only in process memory: a restart resets every user to
// unread. That is intentional, the derived notifications themselves are
// never persisted either.
type ReadState struct {
	mu   sync.RWMutex
	read map[int64]map[string]struct{}
}

func NewReadState() *ReadState {
	return &ReadState{
		read: make(map[int64]map[string]struct{}),
	}
}

// MarkAsRead records a notification as read for the user. Marking an
// already-read notification is a no-op.
func (r *ReadState) MarkAsRead(userID int64, notificationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.read[userID]
	if !ok {
		set = make(map[string]struct{})
		r.read[userID] = set
	}
	set[notificationID] = struct{}{}
}

// MarkMultipleAsRead unions the given IDs into the user's read set and
// returns how many IDs were processed. Duplicates and already-read IDs
// still count toward the total.
func (r *ReadState) MarkMultipleAsRead(userID int64, notificationIDs []string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.read[userID]
	if !ok {
		set = make(map[string]struct{})
		r.read[userID] = set
	}
	for _, id := range notificationIDs {
		set[id] = struct{}{}
	}
	return len(notificationIDs)
}

// MarkAllAsRead marks a caller-supplied snapshot of the user's current
// notification IDs as read. The tracker has no notion of "all IDs" on
// its own, so callers derive the snapshot immediately before calling.
func (r *ReadState) MarkAllAsRead(userID int64, notificationIDs []string) int {
	return r.MarkMultipleAsRead(userID, notificationIDs)
}

// IsRead reports whether the user has read the notification. A user
// with no tracked state has read nothing.
func (r *ReadState) IsRead(userID int64, notificationID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.read[userID][notificationID]
	return ok
}

// ReadNotifications returns a copy of the user's read set.
func (r *ReadState) ReadNotifications(userID int64) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.read[userID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// UnreadCount counts how many of the given IDs the user has not read.
func (r *ReadState) UnreadCount(userID int64, allNotificationIDs []string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.read[userID]
	count := 0
	for _, id := range allNotificationIDs {
		if _, ok := set[id]; !ok {
			count++
		}
	}
	return count
}

// ClearUser drops the user's entire read set and reports whether there
// was any tracked state to drop.
func (r *ReadState) ClearUser(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.read[userID]; !ok {
		return false
	}
	delete(r.read, userID)
	return true
}
