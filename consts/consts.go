package consts

const (
	CSVExtension = ".csv"
	Delimiter    = ','

	K = 1024

	// InsertBatch caps the bound parameters of one multi-row INSERT,
	// rows per statement = InsertBatch / column count.
	InsertBatch = 16 * K

	DefaultDatabase = "Chinese_Cases.db"
	DefaultDataPath = "inputCSV"
)
