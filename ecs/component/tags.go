package component

// PetTag marks the pet's body entity.
type PetTag struct{}

var PetTagComponent = NewComponent[PetTag]()

// PropTag marks a short-lived child sprite such as the food shown while
// feeding. Owner is the entity it was spawned next to.
type PropTag struct {
	Owner uint64
}

var PropTagComponent = NewComponent[PropTag]()
