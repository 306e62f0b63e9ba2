package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Both the PostgreSQL and the embedded store fill it.
type RepositoryProvider struct {
	VaultRepo        VaultRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	ReassignmentRepo ReassignmentRepository
	UserRepo         UserRepositoryFacade
	BankAccountRepo  BankAccountRepositoryFacade
}
