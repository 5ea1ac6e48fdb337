package domain

import (
	"math"
	"time"
)

// RefundCalculation результат расчета возврата по политике отмен
// Живет только в рамках одной сессии и пересчитывается при каждом
// изменении причины; сам по себе никогда не персистится
type RefundCalculation struct {
	RefundPercentage          int
	CancellationFeePercentage int
	RefundType                string
	MaxRefundAmount           float64
	CancellationFeeAmount     float64
	HoursUntilCheckIn         float64
}

// refundTier строка базовой таблицы тарифов
// Тарифы перебираются по убыванию порога, выигрывает первое совпадение
type refundTier struct {
	minHoursExclusive float64
	refundPercentage  int
	feePercentage     int
	refundType        string
}

var refundTiers = []refundTier{
	{minHoursExclusive: 24, refundPercentage: 100, feePercentage: 0, refundType: "Full Refund"},
	{minHoursExclusive: 12, refundPercentage: 75, feePercentage: 25, refundType: "75% Refund"},
	{minHoursExclusive: 6, refundPercentage: 50, feePercentage: 50, refundType: "50% Refund"},
	{minHoursExclusive: 0, refundPercentage: 25, feePercentage: 75, refundType: "25% Refund"},
}

// ComputeRefund вычисляет параметры возврата по времени до заезда и причине отмены
//
// Чистая функция: текущее время передается параметром, обе метки времени
// приводятся к UTC перед вычислением разницы. Ошибок не возвращает:
// отрицательная разница во времени и отрицательная сумма обрезаются до нуля,
// чтобы интерфейс оператора всегда мог показать расчет
func ComputeRefund(checkInAt, now time.Time, reason CancellationReason, totalAmount float64) RefundCalculation {
	if totalAmount < 0 {
		totalAmount = 0
	}

	hours := checkInAt.UTC().Sub(now.UTC()).Hours()
	if hours < 0 {
		hours = 0
	}

	refundPct, feePct, refundType := baseTier(hours)

	// Переопределения по причине применяются после выбора тарифа
	// и безусловно заменяют его результат
	switch reason {
	case ReasonMedicalEmergency:
		refundPct, feePct = 100, 0
		refundType = "Full Refund (Medical Emergency)"
	case ReasonHotelFault:
		refundPct, feePct = 100, 0
		refundType = "Full Refund (Hotel Fault)"
	case ReasonUnset, ReasonGuestRequest, ReasonTravelIssues,
		ReasonWeatherConditions, ReasonForceMajeure, ReasonOther:
		// базовый тариф остается без изменений
	}

	return RefundCalculation{
		RefundPercentage:          refundPct,
		CancellationFeePercentage: feePct,
		RefundType:                refundType,
		MaxRefundAmount:           RoundMoney(totalAmount * float64(refundPct) / 100),
		CancellationFeeAmount:     RoundMoney(totalAmount * float64(feePct) / 100),
		HoursUntilCheckIn:         hours,
	}
}

func baseTier(hours float64) (refundPct, feePct int, refundType string) {
	for _, tier := range refundTiers {
		if hours > tier.minHoursExclusive {
			return tier.refundPercentage, tier.feePercentage, tier.refundType
		}
	}
	return 0, 100, "No Refund"
}

// RoundMoney округляет сумму до 2 знаков (half-up)
func RoundMoney(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
