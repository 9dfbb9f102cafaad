// Package sites provides the site tables the reconciliation engine resolves
// order lines against.
//
// Three sources exist. MemoryStore wraps records parsed from a sheet uploaded
// with the run. DBStore keeps the table in the "sites" database table and can
// import sheets into it. ObjectStore reads a sheet kept in the storage bucket.
// CachedStore puts a time-bounded copy of any store in memory, and New picks
// the hosted store named by the configuration.
package sites
