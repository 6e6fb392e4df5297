package validators

import "go.mongodb.org/mongo-driver/bson"

var propertyID = bson.M{
	"bsonType":  "string",
	"minLength": 1,
	"maxLength": 100,
}

var SeasonalPricingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"propertyId",
			"name",
			"startDate",
			"endDate",
			"priceMultiplier",
			"enabled",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"propertyId": propertyID,

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"startDate": isoDate,
			"endDate":   isoDate,

			"priceMultiplier": bson.M{
				"bsonType":         "number",
				"exclusiveMinimum": true,
				"minimum":          0,
				"maximum":          10,
			},

			"minimumStay": minimumStay,

			"seasonType": bson.M{
				"bsonType": "string",
			},

			"enabled": bson.M{
				"bsonType": "bool",
			},
		},
	},
}

var DateOverrideValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"propertyId",
			"date",
			"available",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"propertyId":  propertyID,
			"date":        isoDate,
			"customPrice": nonNegativeNumber,
			"minimumStay": minimumStay,

			"reason": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"available": bson.M{
				"bsonType": "bool",
			},

			"flatRate": bson.M{
				"bsonType": "bool",
			},
		},
	},
}

var MinimumStayRuleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"propertyId",
			"startDate",
			"endDate",
			"minimumStay",
			"enabled",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"propertyId":  propertyID,
			"startDate":   isoDate,
			"endDate":     isoDate,
			"minimumStay": minimumStay,

			"enabled": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
