package services

// ServiceContainer bundles the service facades for injection into the
// HTTP layer.
type ServiceContainer struct {
	Session     SessionSvcFacade
	Transaction TransactionSvcFacade
	Category    CategorySvcFacade
	Reporting   ReportingSvcFacade
	Operator    OperatorSvcFacade
}
