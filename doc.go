// Package steps implements browser UI test steps for godog.
//
// Elements are addressed by symbolic keys. The keys resolve through an
// element repository loaded from JSON files, each holding an array of
// locators:
//
//	[
//	  {"key": "loginButton", "type": "css", "value": "#login"},
//	  {"key": "searchBox", "type": "name", "value": "q"}
//	]
//
// The type is one of css, name, id, xpath, linkText or partialLinkText.
//
// A Suite owns one remote browser session for the whole run. It is opened
// before the first feature and quit after the last:
//
//	cfg, err := config.Load("", nil)
//	if err != nil {
//		// handle error
//	}
//	suite, err := steps.NewSuite(cfg)
//	if err != nil {
//		// handle error
//	}
//	status := suite.Run(godog.Options{Format: "pretty", Paths: []string{"features"}})
//
// The steps understand English and Turkish phrasings:
//
//	Go to "https://example.com" address        "https://example.com" adresine git
//	Current url is "https://example.com/"      Şu anki url "https://example.com/" ile aynı mı
//	Wait 2 seconds                             2 saniye bekle
//	Element "loginButton" is visible           "loginButton" elementinin görünür olması kontrol edilir
//	Click to element "loginButton"             "loginButton" elementine tıkla
package steps
