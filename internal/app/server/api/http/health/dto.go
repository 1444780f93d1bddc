package health

const (
	StatusOK       = "OK"
	StatusDegraded = "DEGRADED"

	checkOK          = "ok"
	checkUnavailable = "unavailable"
)

type Input struct{}

// Output: при отказе зависимости код 503, тело то же.
type Output struct {
	Status int
	Body   Response
}

type Response struct {
	Status string            `json:"status" example:"OK" enum:"OK,DEGRADED" doc:"Общее состояние сервиса"`
	Checks map[string]string `json:"checks,omitempty" doc:"Состояние зависимостей: ok или unavailable"`
}
