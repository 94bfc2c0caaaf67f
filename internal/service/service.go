// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives bound path
// parameters and a body decoder from the handler, runs the resource CRUD
// protocol against a storage session, and returns serialized entities or
// *errs.HTTPError values.
package service
