package autotrain

type Station struct {
	Code string `groups:"basic"`
	Name string `groups:"basic"`
}

type Direction struct {
	TrainNumber int `groups:"basic"`

	Origin      Station `groups:"basic"`
	Destination Station `groups:"basic"`
}

// The Auto Train runs one departure a day in each direction between
// Lorton VA and Sanford FL
var Directions = []Direction{
	{
		TrainNumber: 53,
		Origin:      Station{Code: "LOR", Name: "Lorton"},
		Destination: Station{Code: "SFA", Name: "Sanford"},
	},
	{
		TrainNumber: 52,
		Origin:      Station{Code: "SFA", Name: "Sanford"},
		Destination: Station{Code: "LOR", Name: "Lorton"},
	},
}

func DirectionForTrain(trainNumber int) *Direction {
	for index, direction := range Directions {
		if direction.TrainNumber == trainNumber {
			return &Directions[index]
		}
	}

	return nil
}
