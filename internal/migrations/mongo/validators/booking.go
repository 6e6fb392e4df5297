package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"propertyId",
			"checkInDate",
			"checkOutDate",
			"status",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"propertyId": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"checkInDate":  isoDate,
			"checkOutDate": isoDate,

			"numberOfGuests": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"on-hold",
					"confirmed",
					"completed",
					"cancelled",
				},
			},

			"holdUntil": bson.M{
				"bsonType": "date",
			},

			"pricing": bson.M{
				"bsonType": "object",
			},
		},
	},
}
