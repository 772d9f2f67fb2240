package notification

import (
	"fmt"
	"strings"
	"time"
)

// months holds Russian month names in the prepositional case ("в июле").
var months = [...]string{
	"январе", "феврале", "марте", "апреле", "мае", "июне",
	"июле", "августе", "сентябре", "октябре", "ноябре", "декабре",
}

// MonthPrepositional renders the month of t for use after "в". The zero
// time falls back to a dateless phrasing so output stays deterministic for
// histories without dates.
func MonthPrepositional(t time.Time) string {
	if t.IsZero() {
		return "этом месяце"
	}
	return months[t.Month()-1]
}

// FormatAmount renders a tenge amount per the tone-of-voice rules: millions
// with a comma decimal ("1,2 млн"), thousands grouped with spaces
// ("27 400"), small amounts plain. The currency sign stays in the template.
func FormatAmount(amount float64) string {
	if amount >= 1000000 {
		s := fmt.Sprintf("%.1f", amount/1000000)
		return strings.Replace(s, ".", ",", 1) + " млн"
	}
	if amount >= 1000 {
		return groupThousands(fmt.Sprintf("%.0f", amount))
	}
	return fmt.Sprintf("%.0f", amount)
}

// groupThousands inserts a space between every three digits from the right.
func groupThousands(digits string) string {
	var b strings.Builder
	n := len(digits)
	for i, d := range digits {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	return b.String()
}
