package validators

import "go.mongodb.org/mongo-driver/bson"

var PriceCalendarValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"propertyId",
			"year",
			"month",
			"days",
			"summary",
			"generatedAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  `_\d{4}-\d{2}$`,
			},

			"propertyId": propertyID,

			"year": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  2000,
				"maximum":  2100,
			},

			"month": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  12,
			},

			"days": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "object",
					"required": []string{"date", "adjustedPrice", "available", "minimumStay", "priceSource"},
					"properties": bson.M{
						"priceSource": bson.M{
							"bsonType": "string",
							"enum":     []string{"base", "season", "override", "weekend"},
						},
					},
				},
			},

			"summary": bson.M{
				"bsonType": "object",
			},

			"generatedAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
