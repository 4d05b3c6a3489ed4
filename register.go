package steps

// ScenarioContext is the part of *godog.ScenarioContext used to register
// steps.
type ScenarioContext interface {
	Step(expr interface{}, stepFunc interface{})
}

// Definition binds step phrasings to one operation.
type Definition struct {
	Name      string
	Phrasings []string
	Func      interface{}
}

// Definitions returns the step vocabulary. Every phrasing of a definition
// runs the same operation; English and Turkish phrasings are accepted.
func (s *Steps) Definitions() []Definition {
	return []Definition{
		{
			Name: "navigate",
			Phrasings: []string{
				`^Go to "([^"]*)" address$`,
				`^"([^"]*)" adresine git$`,
			},
			Func: s.Navigate,
		},
		{
			Name: "assert current url",
			Phrasings: []string{
				`^Şu anki url "([^"]*)" ile aynı mı$`,
				`^Current url is "([^"]*)"$`,
			},
			Func: s.AssertCurrentURL,
		},
		{
			Name: "wait",
			Phrasings: []string{
				`^Wait (\d+) seconds?$`,
				`^(\d+) saniye bekle$`,
			},
			Func: s.WaitSeconds,
		},
		{
			Name: "assert element visible",
			Phrasings: []string{
				`^"([^"]*)" elementinin görünür olması kontrol edilir$`,
				`^Element "([^"]*)" is visible$`,
			},
			Func: s.AssertElementVisible,
		},
		{
			Name: "click element",
			Phrasings: []string{
				`^Click to element "([^"]*)"$`,
				`^"([^"]*)" elementine tıkla$`,
			},
			Func: s.ClickElement,
		},
	}
}

// Register adds every phrasing to sc.
func (s *Steps) Register(sc ScenarioContext) {
	for _, d := range s.Definitions() {
		for _, p := range d.Phrasings {
			sc.Step(p, d.Func)
		}
	}
}
