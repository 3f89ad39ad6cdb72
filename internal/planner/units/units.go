package units

// ============================================================
// Unit Converter
// ============================================================

// FeetToMeters переводит футы в единицы сцены (метры).
const FeetToMeters = 0.3048

// ToScene переводит футы в единицы сцены.
func ToScene(feet float64) float64 {
	return feet * FeetToMeters
}

// ToFeet переводит единицы сцены в футы.
func ToFeet(sceneUnits float64) float64 {
	return sceneUnits / FeetToMeters
}
