package domain

// Category identifies the kind of PC component a product is.
//
// The first seven values are the build slots of the configurator.
// Cooling and Other exist only as catalog categories: the AI product
// enrichment flow may classify a product into them, but they never
// appear in a build.
type Category string

const (
	CategoryCPU         Category = "CPU"
	CategoryMotherboard Category = "Motherboard"
	CategoryRAM         Category = "RAM"
	CategoryGPU         Category = "GPU"
	CategoryStorage     Category = "Storage"
	CategoryPowerSupply Category = "Power Supply"
	CategoryCase        Category = "Case"
	CategoryCooling     Category = "Cooling"
	CategoryOther       Category = "Other"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryCPU, CategoryMotherboard, CategoryRAM, CategoryGPU,
		CategoryStorage, CategoryPowerSupply, CategoryCase,
		CategoryCooling, CategoryOther:
		return true
	}
	return false
}

// IsBuildSlot reports whether the category is one of the seven
// configurator slots.
func (c Category) IsBuildSlot() bool {
	switch c {
	case CategoryCPU, CategoryMotherboard, CategoryRAM, CategoryGPU,
		CategoryStorage, CategoryPowerSupply, CategoryCase:
		return true
	}
	return false
}

// BuildSlots returns the seven configurator categories in display order.
func BuildSlots() []Category {
	return []Category{
		CategoryCPU,
		CategoryMotherboard,
		CategoryRAM,
		CategoryGPU,
		CategoryStorage,
		CategoryPowerSupply,
		CategoryCase,
	}
}

// UserRole controls access to the admin area.
type UserRole string

const (
	UserRoleCustomer  UserRole = "customer"
	UserRoleSuperuser UserRole = "superuser"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleCustomer, UserRoleSuperuser:
		return true
	}
	return false
}

// UserStatus marks whether an account may log in.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

func (s UserStatus) String() string { return string(s) }

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusDisabled:
		return true
	}
	return false
}
