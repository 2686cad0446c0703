package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	USDCDecimals = 6 // USDC has 6 decimals (micro)
	FiatDecimals = 2
)

// MicroToUSDC converts micro units to USDC string without float precision loss
func MicroToUSDC(micro uint64) string {
	return formatWithDecimals(micro, USDCDecimals)
}

// USDCToMicro converts USDC string to micro units without float precision loss
func USDCToMicro(usdc string) (uint64, error) {
	return parseWithDecimals(usdc, USDCDecimals)
}

// MicroToWholeUSDC truncates micro units to whole USDC, the unit the ledger works in
func MicroToWholeUSDC(micro uint64) uint64 {
	return micro / pow10(USDCDecimals)
}

// FiatValue multiplies a whole USDC amount by a decimal rate string ("92.35")
// and returns the fiat amount with two decimals, using integer math only
func FiatValue(usdc uint64, rate string) (string, error) {
	cents, err := parseWithDecimals(rate, FiatDecimals)
	if err != nil {
		return "", fmt.Errorf("failed to parse rate '%s': %w", rate, err)
	}
	if cents != 0 && usdc > ^uint64(0)/cents {
		return "", fmt.Errorf("fiat value overflows")
	}
	return formatWithDecimals(usdc*cents, FiatDecimals), nil
}

// TruncateAddress shortens an address for speech: first and last four characters
func TruncateAddress(address string) (head, tail string) {
	if len(address) <= 8 {
		return address, ""
	}
	return address[:4], address[len(address)-4:]
}

func pow10(n int) uint64 {
	v := uint64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 6) = "24.981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("24.981836", 6) = 24981836
func parseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")

	if len(parts) == 1 {
		n, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return 0, err
		}
		return n * pow10(decimals), nil
	}

	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := parts[1]
	if whole == "" {
		whole = "0"
	}

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	return strconv.ParseUint(whole+frac, 10, 64)
}
