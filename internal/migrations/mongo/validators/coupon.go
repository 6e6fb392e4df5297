package validators

import "go.mongodb.org/mongo-driver/bson"

var CouponValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"code",
			"discountPercentage",
			"active",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"code": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"discountPercentage": bson.M{
				"bsonType": "number",
				"minimum":  0,
				"maximum":  100,
			},

			"propertyId": propertyID,

			"validFrom": bson.M{
				"bsonType": "date",
			},

			"validUntil": bson.M{
				"bsonType": "date",
			},

			"active": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
