package upstream

import "context"

type IBlocknative interface {
	FetchBlockPrices(ctx context.Context) (BlockPricesPayload, error)
}

type IEtherscan interface {
	FetchGasOracle(ctx context.Context) (GasOraclePayload, error)
}

type IExchangeRate interface {
	FetchRate(ctx context.Context) (float64, error)
}

type INetworkStatus interface {
	FetchStatus(ctx context.Context) (string, error)
}
