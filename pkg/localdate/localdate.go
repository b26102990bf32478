// Package localdate implementa fechas de calendario con semántica de medianoche
// local. Los valores "YYYY-MM-DD" que llegan por la API representan un día de
// calendario, no un instante UTC: parsearlos con time.Parse los desplazaría un
// día en zonas con offset negativo. La conversión se hace solo en el borde del
// sistema; la lógica de negocio trabaja con time.Time ya ancladas.
package localdate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Date un día de calendario sin zona ni hora.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Parse interpreta una fecha de la API. Acepta "YYYY-MM-DD" o un timestamp
// RFC3339 (del que se toma el día de calendario en la zona local).
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("localdate: cadena vacía")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		lt := t.Local()
		return Date{Year: lt.Year(), Month: lt.Month(), Day: lt.Day()}, nil
	}
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("localdate: formato inválido %q (se espera YYYY-MM-DD)", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("localdate: año inválido en %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return Date{}, fmt.Errorf("localdate: mes inválido en %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return Date{}, fmt.Errorf("localdate: día inválido en %q", s)
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// FromTime toma el día de calendario de t en la zona local.
func FromTime(t time.Time) Date {
	lt := t.Local()
	return Date{Year: lt.Year(), Month: lt.Month(), Day: lt.Day()}
}

// Midnight devuelve la medianoche local del día.
func (d Date) Midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// String formato ISO YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero indica si la fecha no fue asignada.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// CeilDaysUntil días (redondeados hacia arriba) entre now y due.
// Negativo si due ya pasó.
func CeilDaysUntil(now, due time.Time) int {
	diff := due.Sub(now).Hours() / 24
	return int(math.Ceil(diff))
}
