package questionnaire

// Section is one thematic block of the risk-profile questionnaire.
type Section struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Questions []string `json:"questions"`
}

// Bank returns the static question bank: 7 sections, 67 statements in
// total, each answered on a 1-4 agreement scale. The statements probe
// investor temperament (loss aversion, discipline, self-assessment,
// behavioral biases); higher totals indicate lower risk tolerance.
func Bank() []Section {
	return questionBank
}

var questionBank = []Section{
	{
		ID:    1,
		Title: "Self-knowledge",
		Questions: []string{
			"I know my assets and take responsibility for my debts and obligations.",
			"I take pride in my work and make the most of what I earn from it.",
			"I am authentic without needing to please others.",
			"My work stands out more than that of my peers.",
			"I seek help from experts on the subject.",
			"I weigh specialist opinions without being driven solely by them.",
			"I know my strengths and commit to my goals.",
			"I know my place and avoid needing to be first in everything.",
			"I accept that speculation can prove I was wrong.",
			"I care for my appearance without devoting all my time to it.",
		},
	},
	{
		ID:    2,
		Title: "Loss tolerance",
		Questions: []string{
			"I am more averse to taking losses than to protecting gains.",
			"If taking more risk leads to losses, I hold my position for the long term.",
			"I am aware of economic cycles and that capital tends to grow over the long run.",
			"I buy what I understand and do not mind others' opinions.",
			"I hold my position through drawdowns.",
			"I keep my portfolio despite a high value-at-risk estimate.",
			"I tolerate a considerable deviation of my returns relative to the mean.",
			"I seek to break the status quo and see my portfolio horizons through.",
			"I prefer to postpone buy or sell decisions waiting for a better scenario.",
			"I depend on a margin call or a floor/ceiling to make a decision.",
		},
	},
	{
		ID:    3,
		Title: "Risk awareness",
		Questions: []string{
			"I am aware of systemic risk and act so that I can at least preserve my capital over time.",
			"I face my risk aversion without losing sight of my financial goals.",
			"I have invested in an asset despite the risk attached to it.",
			"I have investment experience on my own or through a financial intermediary.",
			"I would take a short position in search of higher potential profit.",
			"I am more inclined to take losses than to wait for gains.",
			"I agree that one should only invest in what one understands.",
			"I recognize my expectations without losing sight of the opportunity cost I incur.",
			"I postpone taking losses or gains out of anxiety while waiting for a better scenario.",
			"I recognize my own risk aversion.",
		},
	},
	{
		ID:    4,
		Title: "Ambition and persistence",
		Questions: []string{
			"I am ambitious but persistent, rather than chasing short-term zero-risk returns.",
			"I feel comfortable in my status quo and stay there.",
			"I am optimistic.",
			"I build an image of value so that investors seek out my attention.",
			"I have impediments that keep me from persisting against a liability.",
			"I set high goals.",
			"I have shown my skills to colleagues to avoid complex group dynamics such as collective euphoria.",
			"I seek the greatest efficiency in my required returns.",
			"I am a perfectionist.",
			"I aim for long-term capital retention and keep a low turnover of objectives.",
		},
	},
	{
		ID:    5,
		Title: "Financial discipline",
		Questions: []string{
			"My capital is working in line with my needs.",
			"I have financial goals and pursue them on time and in full.",
			"I am consistent.",
			"I speak ill of people behind their backs.",
			"I protect the confidentiality of the information shared with me.",
			"Despite the implied opportunity cost, I meet my goals.",
			"My credit risk is high.",
			"I have a code of conduct.",
			"I respect the rules and norms established for my financial conduct.",
			"I stay firm despite uncertainty.",
		},
	},
	{
		ID:    6,
		Title: "Emotional equanimity",
		Questions: []string{
			"I am fearful when others are greedy.",
			"I use reason to address my priorities and do not get carried away by market emotion.",
			"I remain calm and flexible in the face of non-diversifiable risk.",
			"Given a chosen risk level, I am alarmed by an unforeseen move within the same standard deviation.",
			"In a long position, short-term obligations overwhelm me.",
			"I avoid distress in the face of the unexpected.",
			"In a losing scenario I fall into magical thinking that my enemies caused the result.",
			"I complain a lot.",
			"When the predicted mean shifts, I look for a way to readjust my asset allocation.",
			"I am quick to feel grateful.",
		},
	},
	{
		ID:    7,
		Title: "Information habits",
		Questions: []string{
			"I keep a record of my investments' trends so I do not forget their history.",
			"I broaden my information sources and try to avoid anchoring bias.",
			"I only invest in what I know and ask questions to widen my horizons.",
			"I trust the adage of buying the rumor and selling the news.",
			"I do not change my mind easily.",
			"I do not make excuses for myself.",
			"I stay committed despite the randomness of economic variables, even when they bring no benefit.",
		},
	},
}
