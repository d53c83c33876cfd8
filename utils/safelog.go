// utils/safelog.go
// ============================================================================
// SAFE LOGGING - Enmascara datos sensibles en producción
// ============================================================================
// En modo release los logs no deben exponer correos, montos ni IDs completos
// de los dueños de los registros.
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
)

// IsProduction determina si corremos en modo producción.
var IsProduction = os.Getenv("GIN_MODE") == "release" ||
	os.Getenv("ENVIRONMENT") == "production" ||
	os.Getenv("ENV") == "production"

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Montos en CLP formateados, ex: $1.234.567
	clpRegex = regexp.MustCompile(`-?\$\d{1,3}(\.\d{3})*`)

	uuidRegex = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// MaskString enmascara emails, montos y UUIDs en una cadena.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := input
	result = emailRegex.ReplaceAllString(result, "***@***.***")
	result = clpRegex.ReplaceAllString(result, "$$***")
	result = uuidRegex.ReplaceAllStringFunc(result, func(id string) string {
		return id[:8] + "..."
	})

	return result
}

// MaskAmount enmascara un monto en producción.
func MaskAmount(amount int64) string {
	if IsProduction {
		return "$***"
	}
	return FormatCLP(amount)
}

// MaskID acorta un ID a sus primeros 8 caracteres en producción.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// SafeLog loguea un mensaje enmascarando datos sensibles.
func SafeLog(format string, args ...interface{}) {
	log.Print(MaskString(fmt.Sprintf(format, args...)))
}
