// Package breeze provides a typed client for the Breeze ChMS REST API
// and the supporting pieces for reconciling member-profile snapshots
// over time.
//
// # Quick Start
//
//	cfg, err := breeze.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := breeze.NewFromConfig(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	people, err := client.ListPeople(ctx, breeze.ListPeopleOptions{Details: true})
//	fields, err := client.ProfileFields(ctx)
//
// # Reconciliation
//
// The schema, profile and report subpackages turn raw Breeze payloads
// into comparable snapshots:
//
//	idx, err := schema.BuildIndex(fields)
//	current, err := profile.ExtractAll(idx, people)
//	changes := report.DiffPeople(report.Join(previous, current), idx.FieldNames())
//
// Extraction and diffing are pure, deterministic transforms: the same
// schema and profiles always produce byte-identical snapshots, so
// snapshots serialize cleanly to JSON for comparison across runs.
//
// # Client behavior
//
// Every API call is a single GET with the account's Api-Key header; the
// client performs no retries, backoff or rate limiting. Breeze reports
// most failures inside a 200 response, so bodies are checked for the
// success/errors envelope before decoding.
package breeze
