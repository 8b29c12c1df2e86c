package ml

// cropByClassID is the fixed classifier output space. Class ids come from
// the training label encoding and must not be renumbered.
var cropByClassID = map[int]string{
	1: "Rice", 2: "Maize", 3: "Jute", 4: "Cotton", 5: "Coconut",
	6: "Papaya", 7: "Orange", 8: "Apple", 9: "Muskmelon",
	10: "Watermelon", 11: "Grapes", 12: "Mango", 13: "Banana",
	14: "Pomegranate", 15: "Lentil", 16: "Blackgram", 17: "Mungbean",
	18: "Mothbeans", 19: "Pigeonpeas", 20: "Kidneybeans",
	21: "Chickpea", 22: "Coffee",
}

// UnknownCrop is returned for class ids outside the trained enumeration.
const UnknownCrop = "Unknown"

// CropName maps a class id to its crop label, or UnknownCrop when the id is
// outside the enumeration.
func CropName(classID int) string {
	if name, ok := cropByClassID[classID]; ok {
		return name
	}
	return UnknownCrop
}

// CropCount is the size of the trained output space.
const CropCount = 22
