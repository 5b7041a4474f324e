// Package worker fetches batches of member profiles on a bounded pool
// of goroutines.
//
// The bulk people listing returns every profile in one response, but
// some workflows only hold a list of person ids (tag members, event
// attendees, form submitters) and need each profile individually. Pool
// runs those per-person fetches concurrently while keeping results
// addressable by person id.
package worker
