package serxerr

// Operation names the serializer entry point an error was raised from.
type Operation int8

const (
	Unknown Operation = iota
	ToDict
	ToJSON
	FromDict
	FromJSON
)

func (o Operation) String() string {
	operations := map[Operation]string{
		Unknown:  "unknown",
		ToDict:   "to dict",
		ToJSON:   "to json",
		FromDict: "from dict",
		FromJSON: "from json",
	}

	if str, ok := operations[o]; ok {
		return str
	}
	return "unknown"
}
