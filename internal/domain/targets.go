package domain

// targetKind distingue um valor único de um conjunto de valores.
// O valor zero de Targets não é nenhum dos dois e não corresponde a nada.
type targetKind int

const (
	targetInvalid targetKind = iota
	targetScalar
	targetSet
)

// Targets são os valores procurados por um filtro de linhas.
// É construído explicitamente como Scalar ou Set pelo chamador.
type Targets struct {
	kind   targetKind
	values []string
}

// Scalar cria um alvo de igualdade exata
func Scalar(value string) Targets {
	return Targets{kind: targetScalar, values: []string{value}}
}

// Set cria um alvo de pertinência; a ordem e as repetições não importam.
// Um conjunto sem valores é inválido, como o valor zero.
func Set(values ...string) Targets {
	vs := make([]string, len(values))
	copy(vs, values)
	return Targets{kind: targetSet, values: vs}
}

// Valid indica se o alvo foi construído por Scalar ou por Set com ao menos um valor
func (t Targets) Valid() bool {
	return t.kind != targetInvalid && len(t.values) > 0
}

// Values retorna uma cópia dos valores procurados
func (t Targets) Values() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)
	return out
}

// Matcher devolve o predicado de correspondência do alvo
func (t Targets) Matcher() func(string) bool {
	if !t.Valid() {
		return func(string) bool { return false }
	}

	if t.kind == targetScalar {
		want := t.values[0]
		return func(v string) bool { return v == want }
	}

	set := make(map[string]struct{}, len(t.values))
	for _, v := range t.values {
		set[v] = struct{}{}
	}
	return func(v string) bool {
		_, ok := set[v]
		return ok
	}
}
