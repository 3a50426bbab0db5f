package domain

// Princípios ativos da família da cloroquina
var ChloroquineIngredients = []string{
	"CLOROQUINA",
	"DIFOSFATO DE CLOROQUINA",
	"HIDROXICLOROQUINA",
	"SULFATO DE HIDROXICLOROQUINA",
	"DICLORIDRATO DE CLOROQUINA",
	"SULFATO DE CLOROQUINA",
}

// Anabolizantes e esteroides acompanhados na visualização mensal
var AnabolicIngredients = []string{
	"TESTOSTERONA",
	"ESTANOZOLOL",
	"METANDIENONA",
	"NANDROLONA",
}

// AnabolicPanel descreve um painel da visualização de anabolizantes
type AnabolicPanel struct {
	Ingredient string
	Title      string
	YMax       float64
}

// AnabolicPanels são os três painéis exibidos, com o limite do eixo y de cada um
var AnabolicPanels = []AnabolicPanel{
	{Ingredient: "TESTOSTERONA", Title: "Testosterona", YMax: 30000},
	{Ingredient: "ESTANOZOLOL", Title: "Estanozolol", YMax: 3000},
	{Ingredient: "NANDROLONA", Title: "Nandrolona", YMax: 300},
}

// Zolpidem e seu sal
var ZolpidemIngredients = []string{
	"HEMITARTARATO DE ZOLPIDEM",
	"ZOLPIDEM",
}

// Metilfenidato
var MethylphenidateIngredients = []string{
	"CLORIDRATO DE METILFENIDATO",
}
