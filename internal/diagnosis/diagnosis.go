// Package diagnosis defines the immutable user-profile snapshot that drives
// plan generation.
package diagnosis

import "fmt"

// MainGoal is the primary outcome the user wants from the regimen.
type MainGoal string

const (
	GoalGrowth         MainGoal = "Crescimento"
	GoalHydration      MainGoal = "Hidratação Profunda"
	GoalReconstruction MainGoal = "Reconstrução"
	GoalShine          MainGoal = "Brilho e Maciez"
)

// HairType is the curl pattern of the hair.
type HairType string

const (
	HairStraight HairType = "Liso"
	HairWavy     HairType = "Ondulado"
	HairCurly    HairType = "Cacheado"
	HairCoily    HairType = "Crespo"
)

// ScalpType describes the scalp condition.
type ScalpType string

const (
	ScalpOily   ScalpType = "Oleoso"
	ScalpNormal ScalpType = "Normal"
	ScalpDry    ScalpType = "Seco"
)

// Porosity describes how readily the hair absorbs moisture.
type Porosity string

const (
	PorosityLow    Porosity = "Baixa"
	PorosityMedium Porosity = "Média"
	PorosityHigh   Porosity = "Alta"
)

// BudgetLevel is the ordered spending tier that gates which recipes the
// plan (and the fallback selector) may suggest.
type BudgetLevel string

const (
	BudgetLow     BudgetLevel = "Econômico"
	BudgetMedium  BudgetLevel = "Médio"
	BudgetPremium BudgetLevel = "Premium"
)

// Diagnosis is the immutable intake snapshot. It is created once per
// diagnosis flow and embedded inside the generated plan.
type Diagnosis struct {
	MainGoal     MainGoal    `json:"mainGoal"`
	HairType     HairType    `json:"hairType"`
	ScalpType    ScalpType   `json:"scalpType"`
	Porosity     Porosity    `json:"porosity"`
	HasChemicals bool        `json:"hasChemicals"`
	BudgetLevel  BudgetLevel `json:"budgetLevel"`
}

func (g MainGoal) Valid() bool {
	switch g {
	case GoalGrowth, GoalHydration, GoalReconstruction, GoalShine:
		return true
	}
	return false
}

func (h HairType) Valid() bool {
	switch h {
	case HairStraight, HairWavy, HairCurly, HairCoily:
		return true
	}
	return false
}

func (s ScalpType) Valid() bool {
	switch s {
	case ScalpOily, ScalpNormal, ScalpDry:
		return true
	}
	return false
}

func (p Porosity) Valid() bool {
	switch p {
	case PorosityLow, PorosityMedium, PorosityHigh:
		return true
	}
	return false
}

func (b BudgetLevel) Valid() bool {
	switch b {
	case BudgetLow, BudgetMedium, BudgetPremium:
		return true
	}
	return false
}

// Validate checks that every enum field carries a recognized value.
func (d Diagnosis) Validate() error {
	if !d.MainGoal.Valid() {
		return fmt.Errorf("invalid main goal: %q", d.MainGoal)
	}
	if !d.HairType.Valid() {
		return fmt.Errorf("invalid hair type: %q", d.HairType)
	}
	if !d.ScalpType.Valid() {
		return fmt.Errorf("invalid scalp type: %q", d.ScalpType)
	}
	if !d.Porosity.Valid() {
		return fmt.Errorf("invalid porosity: %q", d.Porosity)
	}
	if !d.BudgetLevel.Valid() {
		return fmt.Errorf("invalid budget level: %q", d.BudgetLevel)
	}
	return nil
}
