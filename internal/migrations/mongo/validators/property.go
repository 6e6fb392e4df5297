package validators

import "go.mongodb.org/mongo-driver/bson"

// PropertyValidator checks only the pricing fields; the rest of a property
// document belongs to the listing side.
var PropertyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"pricePerNight": nonNegativeNumber,
			"extraGuestFee": nonNegativeNumber,
			"cleaningFee":   nonNegativeNumber,

			"baseCurrency": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 3,
			},

			"baseOccupancy": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"maxGuests": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"defaultMinimumStay": minimumStay,

			"pricingConfig": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"weekendAdjustment": nonNegativeNumber,
					"weekendDays": bson.M{
						"bsonType": "array",
						"items":    bson.M{"bsonType": "string"},
					},
					"lengthOfStayDiscounts": bson.M{
						"bsonType": "array",
						"items": bson.M{
							"bsonType": "object",
							"required": []string{"minNights", "discountPercentage"},
							"properties": bson.M{
								"minNights": bson.M{
									"bsonType": []string{"int", "long"},
									"minimum":  1,
								},
								"discountPercentage": bson.M{
									"bsonType": "number",
									"minimum":  0,
									"maximum":  100,
								},
							},
						},
					},
				},
			},
		},
	},
}
