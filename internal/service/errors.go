package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when the caller is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCustomerNotFound is returned when a customer is not found
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrProposalNotFound is returned when a proposal is not found
	ErrProposalNotFound = errors.New("proposal not found")

	// ErrShootNotFound is returned when a shoot is not found
	ErrShootNotFound = errors.New("shoot not found")

	// ErrSceneNotFound is returned when a scene is not found
	ErrSceneNotFound = errors.New("scene not found")

	// ErrDeliverableNotFound is returned when a deliverable is not found
	ErrDeliverableNotFound = errors.New("deliverable not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrInteractionNotFound is returned when an interaction is not found
	ErrInteractionNotFound = errors.New("interaction not found")

	// ErrExpenseNotFound is returned when an expense is not found
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrIncomeNotFound is returned when an income entry is not found
	ErrIncomeNotFound = errors.New("income entry not found")

	// ErrServiceItemNotFound is returned when a catalog service is not found
	ErrServiceItemNotFound = errors.New("service item not found")

	// ErrBundleNotFound is returned when a bundle is not found
	ErrBundleNotFound = errors.New("bundle not found")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when a login attempt fails.
	// Unknown email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidStatusTransition is returned when a proposal lifecycle
	// move is not allowed from the current status
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrProposalNotEditable is returned when items are changed on a
	// proposal that already left the draft status
	ErrProposalNotEditable = errors.New("proposal is no longer editable")

	// ErrProposalNotAccepted is returned when payment is recorded on a
	// proposal that was never accepted
	ErrProposalNotAccepted = errors.New("proposal is not accepted")

	// ErrAlreadyPaid is returned when payment is recorded twice
	ErrAlreadyPaid = errors.New("proposal is already paid")

	// ErrIncomeLinkedToProposal is returned when a proposal-sourced
	// income entry is edited or deleted directly
	ErrIncomeLinkedToProposal = errors.New("income entry is managed by its proposal")
)
