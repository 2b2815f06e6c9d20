// Package execution defines how the platform invokes the contracts packaged
// with the application.
//
// A contract is invoked in two situations: when an account sends it a
// message, and when the platform delivers the reply of a submission the
// contract tagged for notification. Both run to completion within a single
// invocation. The platform rolls back every state change of a failing
// invocation, so a contract can mutate the snapshot freely before returning
// an error.
//
// Documentation Last Review: 05.02.2026
package execution

import (
	"github.com/duet-dlt/duet/chain"
	"github.com/duet-dlt/duet/core/store"
)

// Context is the environment of a contract invocation.
type Context struct {
	// Self is the address the invoked contract is deployed at.
	Self chain.Address

	// Sender is the validated address of the account sending the message.
	Sender chain.Address

	// Funds are the coins attached to the message, credited to the contract
	// before the execution starts.
	Funds []chain.Coin
}

// Response is the outcome of a successful invocation.
type Response struct {
	// Submissions are the instructions handed back to the platform, executed
	// in order after the invocation.
	Submissions []chain.Submission

	// Attributes are appended to the events of the invocation.
	Attributes []chain.Attribute
}

// Contract is the interface to implement to register a contract.
type Contract interface {
	// Execute processes a message sent to the contract.
	Execute(snap store.Snapshot, ctx Context, msg []byte) (Response, error)

	// Reply consumes the callback of a submission tagged for notification.
	Reply(snap store.Snapshot, reply chain.Reply) (Response, error)
}
