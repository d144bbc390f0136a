package agent

import (
	"sort"
	"strings"

	"makini-agent-backend/model"
)

// equipmentSynonyms normaliza variantes ortográficas e termos vizinhos
// para o token canónico usado na coluna titulo/especificação.
var equipmentSynonyms = map[string]string{
	"trator":        "trator",
	"tractor":       "trator",
	"trátor":        "trator",
	"traktor":       "trator",
	"tratores":      "trator",
	"tractores":     "trator",
	"charrua":       "charrua",
	"arado":         "charrua",
	"colheitadeira": "colheitadeira",
	"ceifeira":      "colheitadeira",
	"debulhador":    "debulhador",
	"debulhadora":   "debulhador",
	"semeadora":     "semeadora",
	"sementeira":    "semeadora",
	"pulverizador":  "pulverizador",
	"pulverizadora": "pulverizador",
	"camiao":        "camião",
	"camião":        "camião",
	"camioes":       "camião",
	"camiões":       "camião",
	"caminhao":      "camião",
	"caminhão":      "camião",
	"atrelado":      "atrelado",
	"reboque":       "atrelado",
}

// activityIntents mapeia descrições de atividade para uma das quatro
// categorias canónicas. Quando o utilizador descreve a atividade sem
// nomear equipamento, o filtro por categoria dá maior cobertura.
var activityIntents = map[string]string{
	"lavrar":                  model.CategoriaPreparacaoSolo,
	"preparar o solo":         model.CategoriaPreparacaoSolo,
	"preparar a terra":        model.CategoriaPreparacaoSolo,
	"gradagem":                model.CategoriaPreparacaoSolo,
	"semear":                  model.CategoriaPlantio,
	"plantar":                 model.CategoriaPlantio,
	"plantio":                 model.CategoriaPlantio,
	"transplantar":            model.CategoriaPlantio,
	"pulverizar":              model.CategoriaInsumos,
	"adubar":                  model.CategoriaInsumos,
	"aplicar fertilizante":    model.CategoriaInsumos,
	"aplicar herbicida":       model.CategoriaInsumos,
	"colher":                  model.CategoriaColheita,
	"colheita":                model.CategoriaColheita,
	"debulhar":                model.CategoriaColheita,
	"transporte de colheita":  model.CategoriaColheita,
	"transportar a produção":  model.CategoriaColheita,
}

// canonicalEquipmentType devolve o token canónico para um nome de
// equipamento escrito livremente.
func canonicalEquipmentType(raw string) (string, bool) {
	canonical, ok := equipmentSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return canonical, ok
}

// categoryForActivity devolve a categoria canónica para uma descrição de
// atividade.
func categoryForActivity(raw string) (string, bool) {
	category, ok := activityIntents[strings.ToLower(strings.TrimSpace(raw))]
	return category, ok
}

// normalizationGuidance transcreve as tabelas de sinónimos e de
// atividades para as instruções de sistema. A normalização é orientação
// dada ao modelo na construção dos argumentos das ferramentas; o
// despachante não normaliza por conta própria.
func normalizationGuidance() string {
	var b strings.Builder

	b.WriteString("Normalização de termos (aplicar antes de pesquisar):\n")
	b.WriteString("- Se o utilizador nomear equipamento específico, usa o termo canónico em equipment_type (pesquisa mais precisa).\n")
	b.WriteString("- Se o utilizador descrever apenas a atividade, pesquisa só por category (maior cobertura), sem equipment_type.\n\n")

	b.WriteString("Sinónimos de equipamentos (variante = termo canónico):\n")
	for _, variant := range sortedKeys(equipmentSynonyms) {
		canonical := equipmentSynonyms[variant]
		if variant == canonical {
			continue
		}
		b.WriteString("- " + variant + " = " + canonical + "\n")
	}

	b.WriteString("\nAtividades e categorias correspondentes:\n")
	for _, activity := range sortedKeys(activityIntents) {
		b.WriteString("- " + activity + " -> " + activityIntents[activity] + "\n")
	}

	b.WriteString("\nCategorias válidas: " + strings.Join(model.Categorias, ", ") + ".")

	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
