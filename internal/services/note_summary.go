package services

import (
	"fmt"
	"strings"

	"herbalgarden/internal/models"
)

const summaryListLimit = 3

// composePlantSummary builds the body of a summary note. Sections appear in
// a fixed order and are skipped when the plant has no data for them.
func composePlantSummary(p *models.Plant) string {
	var parts []string

	if p.ScientificName != "" {
		parts = append(parts, fmt.Sprintf("%s (%s)", p.PlantName, p.ScientificName))
	} else {
		parts = append(parts, p.PlantName)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}

	var props []string
	for _, mp := range firstN(p.MedicinalProperties, summaryListLimit) {
		if mp.Property != "" {
			props = append(props, mp.Property)
		}
	}
	if len(props) > 0 {
		parts = append(parts, fmt.Sprintf("Key medicinal properties: %s.", strings.Join(props, ", ")))
	}

	if uses := firstN(p.TraditionalUses, summaryListLimit); len(uses) > 0 {
		parts = append(parts, fmt.Sprintf("Traditional uses: %s.", strings.Join(uses, "; ")))
	}

	care := p.CareInstructions.Data()
	growing := p.GrowingConditions.Data()
	var careBits []string
	if v := firstNonEmpty(care.Watering, growing.WaterNeeds); v != "" {
		careBits = append(careBits, "Watering: "+v)
	}
	if v := firstNonEmpty(care.Sunlight, growing.Sunlight); v != "" {
		careBits = append(careBits, "Sunlight: "+v)
	}
	if v := firstNonEmpty(care.SoilType, growing.SoilType); v != "" {
		careBits = append(careBits, "Soil: "+v)
	}
	if len(careBits) > 0 {
		parts = append(parts, strings.Join(careBits, " | "))
	}

	return truncateRunes(strings.Join(parts, "\n"), models.MaxNoteContentLen)
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if n < 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
