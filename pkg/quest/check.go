package quest

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Field-level entity validation. This is shape validation for documents
// crossing the import boundary (required ids, enum membership, sane
// counts) - structural graph validation is the validate package's job.

// Validate checks the node's required fields and per-variant constraints.
func (n Node) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.ID, validation.Required),
		validation.Field(&n.Type, validation.Required, validation.In(
			TypeStart, TypeDialogue, TypeChoice, TypeEvent,
			TypeIf, TypeAnd, TypeOr, TypeEnd,
		)),
		validation.Field(&n.Action, validation.When(n.Type == TypeEvent,
			validation.Required, validation.In(ActionTrigger, ActionCheck))),
		validation.Field(&n.InputCount, validation.When(n.Type == TypeAnd || n.Type == TypeOr,
			validation.Required, validation.Min(2))),
		validation.Field(&n.Outcome, validation.When(n.Type == TypeEnd,
			validation.Required, validation.In(OutcomeSuccess, OutcomeFailure, OutcomeNeutral))),
		validation.Field(&n.Options),
	)
}

// Validate checks that the option has an id. Empty labels are legal here;
// the validation engine reports them as a warning in the user's data.
func (o Option) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.ID, validation.Required),
	)
}

// Validate checks the connection's required endpoints.
func (c Connection) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.SourceNodeID, validation.Required),
		validation.Field(&c.TargetNodeID, validation.Required),
	)
}

// Validate checks the quest's required fields and every nested node and
// connection.
func (q Quest) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.ID, validation.Required),
		validation.Field(&q.Name, validation.Required),
		validation.Field(&q.Nodes),
		validation.Field(&q.Connections),
	)
}

// Validate checks the event parameter's name and type.
func (p EventParameter) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Type, validation.Required, validation.In("string", "number", "boolean")),
	)
}

// Validate checks the global event's required fields and parameter schema.
func (e GlobalEvent) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ID, validation.Required),
		validation.Field(&e.Name, validation.Required),
		validation.Field(&e.Parameters),
	)
}

// Validate checks the project's required fields and every nested quest
// and event.
func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Quests),
		validation.Field(&p.Events),
	)
}
