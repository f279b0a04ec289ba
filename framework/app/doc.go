// Package app is the composition root.
//
//	cfg := config.Load()
//	application := app.New(cfg)
//	if err := application.Boot(billing.Assembly, shipping.Assembly); err != nil {
//	    log.Fatal(err)
//	}
//	cmp, _ := equality.Resolve[*billing.Invoice](application.Container)
//
// Boot always includes the framework's own assembly (config, logger and the
// inspection router), then hands everything to the orchestrator.
package app
