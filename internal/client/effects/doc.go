// Package effects runs side-effect handlers in response to store actions.
//
// Each action type has at most one handler, registered with TakeLatest.
// When an action arrives while the previous handler for the same type is
// still running, the previous run is cancelled and the new one starts:
// only the latest run of each type can finish its work. Runs for different
// types are independent.
//
// Cancellation is cooperative. A handler receives a context that is
// cancelled when it is superseded or when the coordinator closes; external
// calls made with that context abort, and follow-up actions should be sent
// through store.Dispatcher.DispatchContext so a superseded run cannot touch
// state. Work a run already finished is not undone.
//
// Handler errors are not turned into actions. They are logged and passed to
// the optional error hook.
package effects
