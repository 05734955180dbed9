package store

import "github.com/kwahlin/daybook/internal/domain"

// action is the closed set of state transitions. Each remote operation
// contributes a Requested action plus exactly one terminal action, and
// reduce handles them exhaustively — there is no open-ended dispatch.
type action interface {
	isAction()
}

type loadRequested struct{}

type loadSucceeded struct {
	events []domain.Event
}

type loadFailed struct {
	message string
}

type createRequested struct{}

type createSucceeded struct {
	event domain.Event
}

type createFailed struct{}

type deleteRequested struct{}

type deleteSucceeded struct {
	id int64
}

type deleteFailed struct{}

func (loadRequested) isAction()   {}
func (loadSucceeded) isAction()   {}
func (loadFailed) isAction()      {}
func (createRequested) isAction() {}
func (createSucceeded) isAction() {}
func (createFailed) isAction()    {}
func (deleteRequested) isAction() {}
func (deleteSucceeded) isAction() {}
func (deleteFailed) isAction()    {}

// reduce derives the next state from the previous state and one action.
// It is pure: prev is never mutated, and every returned State is built from
// fresh copies of whatever changed. The normalized collection only changes on
// success actions; a failure leaves it exactly as it was.
func reduce(prev State, a action) State {
	next := prev

	switch a := a.(type) {
	case loadRequested:
		next.Load = RequestState{Status: StatusRequested}

	case loadSucceeded:
		// Replace the whole collection with the server's, in server order.
		byID := make(map[int64]domain.Event, len(a.events))
		allIDs := make([]int64, 0, len(a.events))
		for _, ev := range a.events {
			if _, seen := byID[ev.ID]; seen {
				continue
			}
			byID[ev.ID] = ev
			allIDs = append(allIDs, ev.ID)
		}
		next.ByID = byID
		next.AllIDs = allIDs
		next.Load = RequestState{Status: StatusSucceeded}

	case loadFailed:
		next.Load = RequestState{Status: StatusFailed, Message: a.message}

	case createRequested:
		next.Create = RequestState{Status: StatusRequested}

	case createSucceeded:
		byID := make(map[int64]domain.Event, len(prev.ByID)+1)
		for id, ev := range prev.ByID {
			byID[id] = ev
		}
		allIDs := append([]int64(nil), prev.AllIDs...)
		if _, seen := byID[a.event.ID]; !seen {
			allIDs = append(allIDs, a.event.ID)
		}
		byID[a.event.ID] = a.event
		next.ByID = byID
		next.AllIDs = allIDs
		next.Create = RequestState{Status: StatusSucceeded}

	case createFailed:
		next.Create = RequestState{Status: StatusFailed}

	case deleteRequested:
		next.Delete = RequestState{Status: StatusRequested}

	case deleteSucceeded:
		// One transition removes the id from both structures; no intermediate
		// state ever has them disagreeing.
		byID := make(map[int64]domain.Event, len(prev.ByID))
		for id, ev := range prev.ByID {
			if id != a.id {
				byID[id] = ev
			}
		}
		allIDs := make([]int64, 0, len(prev.AllIDs))
		for _, id := range prev.AllIDs {
			if id != a.id {
				allIDs = append(allIDs, id)
			}
		}
		next.ByID = byID
		next.AllIDs = allIDs
		next.Delete = RequestState{Status: StatusSucceeded}

	case deleteFailed:
		next.Delete = RequestState{Status: StatusFailed}
	}

	return next
}
