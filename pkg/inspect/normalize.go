// Package inspect converts raw questionnaire answers into the closed
// inspection vocabularies used by the valuation engine.
package inspect

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	domain "github.com/donaldgifford/tradein-valuator/pkg/types"
)

// ErrUnknownAnswer is returned when an answer does not map to any known value.
var ErrUnknownAnswer = errors.New("unknown answer")

// displayMap maps normalized answers to display statuses.
var displayMap = map[string]domain.DisplayImageStatus{
	// enum values (identity mappings)
	"ok":    domain.DisplayOK,
	"pix":   domain.DisplayPixels,
	"lines": domain.DisplayLines,
	"burn":  domain.DisplayBurn,
	"mura":  domain.DisplayMura,
	// questionnaire variants
	"perfecta":        domain.DisplayOK,
	"sin fallas":      domain.DisplayOK,
	"good":            domain.DisplayOK,
	"pixeles muertos": domain.DisplayPixels,
	"dead pixels":     domain.DisplayPixels,
	"pixels":          domain.DisplayPixels,
	"lineas":          domain.DisplayLines,
	"quemada":         domain.DisplayBurn,
	"quemado":         domain.DisplayBurn,
	"burn in":         domain.DisplayBurn,
	"manchas":         domain.DisplayMura,
	"clouding":        domain.DisplayMura,
}

// glassMap maps normalized answers to glass statuses.
var glassMap = map[string]domain.GlassStatus{
	"none":    domain.GlassNone,
	"micro":   domain.GlassMicro,
	"visible": domain.GlassVisible,
	"deep":    domain.GlassDeep,
	"chip":    domain.GlassChip,
	"crack":   domain.GlassCrack,

	"sin rayas":         domain.GlassNone,
	"ninguna":           domain.GlassNone,
	"no scratches":      domain.GlassNone,
	"micro rayas":       domain.GlassMicro,
	"microrayas":        domain.GlassMicro,
	"micro scratches":   domain.GlassMicro,
	"rayas visibles":    domain.GlassVisible,
	"visible scratches": domain.GlassVisible,
	"rayas profundas":   domain.GlassDeep,
	"deep scratches":    domain.GlassDeep,
	"despostillado":     domain.GlassChip,
	"astillado":         domain.GlassChip,
	"chipped":           domain.GlassChip,
	"roto":              domain.GlassCrack,
	"estrellado":        domain.GlassCrack,
	"cracked":           domain.GlassCrack,
}

// housingMap maps normalized answers to housing statuses.
var housingMap = map[string]domain.HousingStatus{
	"minimos": domain.HousingMinimos,
	"algunos": domain.HousingAlgunos,
	"doblado": domain.HousingDoblado,

	"sin signos":       domain.HousingSinSignos,
	"like new":         domain.HousingSinSignos,
	"none":             domain.HousingSinSignos,
	"signos minimos":   domain.HousingMinimos,
	"minimal":          domain.HousingMinimos,
	"algunos signos":   domain.HousingAlgunos,
	"some":             domain.HousingAlgunos,
	"desgaste visible": domain.HousingDesgasteVisible,
	"visible wear":     domain.HousingDesgasteVisible,
	"doblada":          domain.HousingDoblado,
	"bent":             domain.HousingDoblado,
}

// physicalMap maps normalized answers to the simple-path physical condition.
var physicalMap = map[string]domain.PhysicalCondition{
	"perfecto":   domain.PhysicalPerfecto,
	"perfecta":   domain.PhysicalPerfecto,
	"perfect":    domain.PhysicalPerfecto,
	"como nuevo": domain.PhysicalPerfecto,
	"bueno":      domain.PhysicalBueno,
	"buena":      domain.PhysicalBueno,
	"good":       domain.PhysicalBueno,
	"regular":    domain.PhysicalRegular,
	"fair":       domain.PhysicalRegular,
	"worn":       domain.PhysicalRegular,
}

// NormalizeDisplay maps a raw display answer to a DisplayImageStatus.
func NormalizeDisplay(raw string) (domain.DisplayImageStatus, error) {
	return lookup("display", displayMap, raw)
}

// NormalizeGlass maps a raw glass answer to a GlassStatus.
func NormalizeGlass(raw string) (domain.GlassStatus, error) {
	return lookup("glass", glassMap, raw)
}

// NormalizeHousing maps a raw housing answer to a HousingStatus.
func NormalizeHousing(raw string) (domain.HousingStatus, error) {
	return lookup("housing", housingMap, raw)
}

// NormalizePhysical maps a raw cosmetic answer to a PhysicalCondition.
func NormalizePhysical(raw string) (domain.PhysicalCondition, error) {
	return lookup("physical", physicalMap, raw)
}

func lookup[T any](field string, m map[string]T, raw string) (T, error) {
	key := normalizeKey(raw)
	if v, ok := m[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%s %q: %w", field, raw, ErrUnknownAnswer)
}

// normalizeKey lowercases, strips accents, trims and folds dashes,
// underscores and repeated spaces into single spaces.
func normalizeKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if folded, _, err := transform.String(foldAccents(), s); err == nil {
		s = folded
	}
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// foldAccents returns a fresh transformer; transformers are not safe for
// concurrent use.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
