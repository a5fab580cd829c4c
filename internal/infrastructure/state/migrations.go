package state

// Migration transforma el estado crudo desde la versión From a la siguiente.
// Cada paso debe ser idempotente.
type Migration struct {
	From  int
	Name  string
	Apply func(state map[string]any)
}

// Migrations cadena ordenada de migraciones.
var Migrations = []Migration{
	{From: 1, Name: "performance-period", Apply: migratePerformancePeriod},
	{From: 2, Name: "timestamps", Apply: migrateTimestamps},
}

// Migrate aplica en orden los pasos con From >= version. Devuelve true si aplicó alguno.
func Migrate(state map[string]any, version int) bool {
	applied := false
	for _, m := range Migrations {
		if version <= m.From {
			m.Apply(state)
			applied = true
		}
	}
	return applied
}

// v1 -> v2: deliveryDate pasa a performancePeriodFrom/To cuando el periodo aún no existe.
// Los registros que ya tienen performancePeriodFrom no se tocan.
func migratePerformancePeriod(state map[string]any) {
	for _, inv := range invoices(state) {
		delivery, _ := inv["deliveryDate"].(string)
		from, _ := inv["performancePeriodFrom"].(string)
		if delivery == "" || from != "" {
			continue
		}
		inv["performancePeriodFrom"] = delivery
		inv["performancePeriodTo"] = delivery
		delete(inv, "deliveryDate")
	}
}

// v2 -> v3: createdAt/updatedAt guardados como fecha "2006-01-02" pasan a RFC 3339.
func migrateTimestamps(state map[string]any) {
	for _, inv := range invoices(state) {
		for _, k := range []string{"createdAt", "updatedAt"} {
			s, ok := inv[k].(string)
			switch {
			case !ok:
			case s == "":
				delete(inv, k)
			case len(s) == len("2006-01-02"):
				inv[k] = s + "T00:00:00Z"
			}
		}
	}
}

func invoices(state map[string]any) []map[string]any {
	list, _ := state["invoices"].([]any)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if inv, ok := item.(map[string]any); ok {
			out = append(out, inv)
		}
	}
	return out
}
