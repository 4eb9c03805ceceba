package bank

// Default returns the built-in anti-bullying awareness questionnaire. Every
// option scores 1 to 3; the scoring service sums them into a profile.
func Default() []Question {
	qs := []Question{
		{ID: "1", Text: "Have you ever been bullied?", Options: []Option{
			{"Never", 1},
			{"Occasionally, but it did not affect me deeply", 2},
			{"Yes, and it hurt my self-esteem or mental health", 3},
		}},
		{ID: "2", Text: "Have you ever seen someone being bullied?", Options: []Option{
			{"Never", 1},
			{"Yes, and I tried to step in or help", 3},
			{"Yes, but I did not know what to do", 2},
		}},
		{ID: "3", Text: "How do you react when you see bullying happen?", Options: []Option{
			{"I ignore it or stay out of it", 1},
			{"I ask an adult or someone in charge for help", 3},
			{"I stand up for the victim myself", 2},
		}},
		{ID: "4", Text: "Have you ever bullied someone?", Options: []Option{
			{"Never", 3},
			{"I took part indirectly (laughing along)", 2},
			{"Yes, but I regret it now", 1},
		}},
		{ID: "5", Text: "Does your school or workplace act against bullying?", Options: []Option{
			{"Yes, and it works", 3},
			{"There are initiatives, but nobody hears about them", 2},
			{"There is nothing", 1},
		}},
		{ID: "6", Text: "Do you think bullying can cause lasting trauma?", Options: []Option{
			{"Yes, it is a serious problem", 3},
			{"It depends on the situation", 2},
			{"No, it passes", 1},
		}},
		{ID: "7", Text: "If someone close to you bullied others, would you intervene?", Options: []Option{
			{"Yes, right away", 3},
			{"I would talk to them in private", 2},
			{"I would not get involved", 1},
		}},
		{ID: "8", Text: "Have you ever been left out of groups or activities?", Options: []Option{
			{"Never", 1},
			{"Occasionally", 2},
			{"Often", 3},
		}},
		{ID: "9", Text: "How would you describe the place where you live, work or study?", Options: []Option{
			{"Respectful and inclusive", 3},
			{"There are conflicts, but they are rare", 2},
			{"Hostile and competitive", 1},
		}},
		{ID: "10", Text: "Do you try to learn about empathy and respect?", Options: []Option{
			{"Yes, all the time", 3},
			{"Sometimes, when needed", 2},
			{"I see no need", 1},
		}},
	}
	for i := range qs {
		qs[i].Position = i + 1
	}
	return qs
}
