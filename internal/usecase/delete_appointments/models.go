package delete_appointments

// Request список ID на удаление
type Request struct {
	IDs []string
}

// Response число фактически удаленных записей
type Response struct {
	Deleted int64
}
