package components

import (
	"github.com/mlange-42/ark/ecs"
)

// AgendaKind enumerates what a creature currently wants or does.
type AgendaKind uint8

const (
	AgendaNone AgendaKind = iota // free for the planner
	AgendaSeekFood
	AgendaIdle
	AgendaProcreate
	AgendaReturnHome
	AgendaEat // active action, Target/Progress are set
)

func (k AgendaKind) String() string {
	switch k {
	case AgendaNone:
		return "none"
	case AgendaSeekFood:
		return "seek_food"
	case AgendaIdle:
		return "idle"
	case AgendaProcreate:
		return "procreate"
	case AgendaReturnHome:
		return "return_home"
	case AgendaEat:
		return "eat"
	default:
		return "unknown"
	}
}

// Agenda is a creature's single intent/action slot. A creature holds at
// most one intent or one primary action at a time; folding both into one
// tagged variant makes the exclusivity rule unrepresentable to violate,
// and keeps every goal transition a plain value write.
//
// Target, Progress and MaxProgress are meaningful only for AgendaEat.
type Agenda struct {
	Kind        AgendaKind
	Target      ecs.Entity
	Progress    int
	MaxProgress int
}

// Empty reports whether the slot is free for the planner.
func (a Agenda) Empty() bool {
	return a.Kind == AgendaNone
}

// IsIntent reports whether the slot holds an unresolved intent.
func (a Agenda) IsIntent() bool {
	switch a.Kind {
	case AgendaSeekFood, AgendaIdle, AgendaProcreate, AgendaReturnHome:
		return true
	}
	return false
}

// Clear frees the slot.
func (a *Agenda) Clear() {
	*a = Agenda{}
}

// SetIntent replaces the slot with a bare intent.
func (a *Agenda) SetIntent(kind AgendaKind) {
	*a = Agenda{Kind: kind}
}

// StartEating replaces the slot with an eat action against target.
func (a *Agenda) StartEating(target ecs.Entity, maxProgress int) {
	*a = Agenda{Kind: AgendaEat, Target: target, MaxProgress: maxProgress}
}
