package validators

import "go.mongodb.org/mongo-driver/bson"

// isoDate matches a yyyy-MM-dd string. Timestamps written by older tooling
// keep their date prefix and still pass.
var isoDate = bson.M{
	"bsonType": "string",
	"pattern":  `^\d{4}-\d{2}-\d{2}`,
}

var (
	nonNegativeNumber = bson.M{
		"bsonType": "number",
		"minimum":  0,
	}

	minimumStay = bson.M{
		"bsonType": []string{"int", "long"},
		"minimum":  0,
		"maximum":  365,
	}
)
