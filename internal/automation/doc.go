// Package automation defines the contract between aedtkit and the external
// simulation application's automation object model.
//
// The application exposes designs, setup modules, boundary managers and
// editors. DesignPort groups the calls aedtkit needs into small capability
// interfaces so that any binding (native, RPC, or the in-memory SimPort) can
// stand behind it. Arguments travel as positional Args lists in the
// application's "NAME:x", "Key:=", value convention.
//
// Recorder decorates a DesignPort and appends every mutating call to a
// Journal, which internal/store implements on SQLite.
package automation
