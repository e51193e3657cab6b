package valuation

import (
	"fmt"
	"math"

	"auditstock/internal/domain"
	apperror "auditstock/internal/errors"
)

// ValidatePercentage rejeita síncronamente percentuais de redução fora de
// [0,100] (inclusive NaN/Inf). A rejeição acontece ANTES do caminho de
// debounce/save: um valor inválido nunca chega a Adjust nem é enfileirado.
func ValidatePercentage(pct float64) error {
	if math.IsNaN(pct) || math.IsInf(pct, 0) || pct < 0 || pct > 100 {
		return apperror.NewValidationError(
			fmt.Sprintf("O percentual de redução deve estar entre 0 e 100 (recebido: %v).", pct),
		)
	}
	return nil
}

// Adjust aplica o percentual de redução controlado pelo usuário sobre o
// valor total de ativos do período. Pré-condição: 0 <= reductionPercentage
// <= 100, garantida pelo chamador via ValidatePercentage. Os dois campos do
// resultado são arredondados para 2 casas (este é um valor de apresentação
// final, não uma etapa intermediária de cálculo).
func Adjust(totalAssetValue, reductionPercentage float64) domain.AdjustedTotal {
	reduction := Round2(totalAssetValue * reductionPercentage / 100)
	return domain.AdjustedTotal{
		ReductionAmount: reduction,
		AdjustedValue:   Round2(totalAssetValue - reduction),
	}
}
