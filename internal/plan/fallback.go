package plan

import "capillaire-ai/internal/diagnosis"

// FallbackRecipe returns the deterministic natural-remedy text for a task
// whose generated recipe is absent. It is total: every category and budget
// combination has a defined output, unknown categories map to a rest-day
// suggestion, and Detox ignores the budget tier.
func FallbackRecipe(category Category, budget diagnosis.BudgetLevel) string {
	switch category {
	case CategoryHydration:
		return "Improvisação Capillaire:\n\n" + byBudget(budget,
			"Use 2 colheres de sopa de soro fisiológico misturadas ao seu condicionador habitual. O açúcar também ajuda no brilho!",
			"Adicione uma colher de mel orgânico e uma tampa de glicerina bi-destilada à sua máscara.",
			"Misture sua máscara base com 5ml de D-Pantenol concentrado e uma ampola de vitaminas.",
		) + "\n\nTempo: 15 minutos."
	case CategoryNutrition:
		return "Improvisação Capillaire:\n\n" + byBudget(budget,
			"Use Azeite de Oliva Extra Virgem morno para uma umectação rápida antes do banho.",
			"Aplique Óleo de Coco extra virgem ou Óleo de Rícino apenas no comprimento.",
			"Utilize Óleo de Argan 100% puro ou Manteiga de Murumuru nos fios secos.",
		) + "\n\nTempo: 20 a 30 minutos."
	case CategoryReconstruction:
		return "Improvisação Capillaire:\n\n" + byBudget(budget,
			"Use o método da clara de ovo (rica em proteínas) batida com seu creme por apenas 10 minutos.",
			"Dissolva meia folha de gelatina incolor em água morna e misture ao creme.",
			"Aplique Queratina Vegetal líquida borrifando nos fios e sele com uma máscara reconstrutora potente.",
		) + "\n\nUso: Apenas se o fio estiver poroso ou elástico."
	case CategoryDetox:
		return "Improvisação Capillaire:\n\nFaça um chá forte de hortelã ou alecrim, deixe esfriar e use no último enxágue do couro cabeludo para estimular a circulação."
	default:
		return "Aproveite o dia de descanso para massagear o couro cabeludo a seco por 5 minutos, estimulando o crescimento natural."
	}
}

// byBudget picks the tier variant, falling back to the low tier for any
// unrecognized budget value.
func byBudget(budget diagnosis.BudgetLevel, low, medium, premium string) string {
	switch budget {
	case diagnosis.BudgetPremium:
		return premium
	case diagnosis.BudgetMedium:
		return medium
	default:
		return low
	}
}
