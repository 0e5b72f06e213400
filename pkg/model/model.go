// Package model holds the in-memory building document the sleeve pipeline
// operates on: elements with categories, parameters, levels and geometry,
// the sleeve family registry, and host-style transactions with rollback.
// Documents load from and save to JSON or YAML files sharing one schema.
package model

import (
	"errors"
	"fmt"
)

// ElementID identifies an element within a document. IDs are positive;
// zero means "no element".
type ElementID int64

func (id ElementID) String() string { return fmt.Sprintf("#%d", int64(id)) }

// Category classifies document elements. The values mirror the host
// categories the pipeline touches.
type Category string

const (
	CategoryMechanicalEquipment Category = "MechanicalEquipment"
	CategoryWalls               Category = "Walls"
	CategoryStructuralFraming   Category = "StructuralFraming"
	CategoryLevels              Category = "Levels"
	// CategoryGenericModel is the category assigned to sleeve instances
	// created by the placer.
	CategoryGenericModel Category = "GenericModel"
)

// Known reports whether c is one of the categories this package defines.
func (c Category) Known() bool {
	switch c {
	case CategoryMechanicalEquipment, CategoryWalls, CategoryStructuralFraming,
		CategoryLevels, CategoryGenericModel:
		return true
	}
	return false
}

// StorageType is the value kind a parameter stores.
type StorageType string

const (
	StorageDouble    StorageType = "Double"
	StorageInteger   StorageType = "Integer"
	StorageString    StorageType = "String"
	StorageElementID StorageType = "ElementID"
)

// Errors shared across the package.
var (
	// ErrNestedTransaction is returned by Document.Run when a transaction
	// is already open on the document.
	ErrNestedTransaction = errors.New("model: nested transaction")
	// ErrElementExists is returned when an element ID is already taken.
	ErrElementExists = errors.New("model: element id already in document")
	// ErrNoSuchElement is returned for lookups of absent element IDs.
	ErrNoSuchElement = errors.New("model: no such element")
	// ErrNoSuchParameter is returned when a named parameter is absent.
	ErrNoSuchParameter = errors.New("model: no such parameter")
	// ErrStorageMismatch is returned when a parameter write does not match
	// the parameter's storage type.
	ErrStorageMismatch = errors.New("model: parameter storage mismatch")
	// ErrNoSuchFamily is returned when a family name is not registered.
	ErrNoSuchFamily = errors.New("model: no such family")
)
