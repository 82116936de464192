// Package topology fetches the room and device inventory from the volume
// service.
//
// Rooms are derived from the service's room map each time Fetch runs and keep
// the order the backend sent; nothing is sorted locally. A fetch is
// all-or-nothing: on any failure the caller gets an empty Topology and the
// error. There is no built-in refresh; callers invoke Fetch again.
package topology
