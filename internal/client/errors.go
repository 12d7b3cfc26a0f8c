package client

import "fmt"

// NetworkError means the round trip could not complete at all.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StoreError means the round trip completed but the store rejected or
// errored on the request.
type StoreError struct {
	Op      string
	Status  int
	Message string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: store rejected request (status %d): %s", e.Op, e.Status, e.Message)
}
