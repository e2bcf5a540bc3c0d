// Package hostinfo reads the identity of the machine serving a request:
// hostname, process id, and uptime. Lookups are read-only OS queries and the
// Provider is safe for concurrent use.
package hostinfo
