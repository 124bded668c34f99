// Package accountservice owns user accounts and credentials.
//
// It signs users up and logs them in, and it resolves bearer tokens into
// access-policy principals. Account deletion cascades through a
// PropertyCascade port so no listing outlives its owner.
package accountservice
