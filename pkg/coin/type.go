package coin

import "strconv"

// Type identifies one catalogued chain. Values follow the SLIP-44 coin types,
// with the wallet-specific extensions for chains sharing a SLIP-44 number.
type Type uint32

const (
	Bitcoin              Type = 0
	Litecoin             Type = 2
	Dogecoin             Type = 3
	Dash                 Type = 5
	Viacoin              Type = 14
	DigiByte             Type = 20
	Monacoin             Type = 22
	Syscoin              Type = 57
	Ethereum             Type = 60
	EthereumClassic      Type = 61
	Cosmos               Type = 118
	Pivx                 Type = 119
	Firo                 Type = 136
	Rootstock            Type = 137
	BitcoinCash          Type = 145
	BitcoinGold          Type = 156
	MantaPacific         Type = 169
	Ravencoin            Type = 175
	POANetwork           Type = 178
	Tron                 Type = 195
	OpBNB                Type = 204
	InternetComputer     Type = 223
	Terra                Type = 330
	Polkadot             Type = 354
	ThetaFuel            Type = 361
	CryptoOrg            Type = 394
	NEAR                 Type = 397
	Kava                 Type = 459
	Bluzelle             Type = 483
	BandChain            Type = 494
	Theta                Type = 500
	Solana               Type = 501
	Secret               Type = 529
	Agoric               Type = 564
	TON                  Type = 607
	Aptos                Type = 637
	Binance              Type = 714
	VeChain              Type = 818
	Callisto             Type = 820
	Viction              Type = 889
	ECash                Type = 899
	THORChain            Type = 931
	Polygon              Type = 966
	OKXChain             Type = 996
	ThunderCore          Type = 1001
	ConfluxeSpace        Type = 1030
	Moonbeam             Type = 1284
	Cardano              Type = 1815
	Qtum                 Type = 2301
	Mantle               Type = 5000
	Greenfield           Type = 5600
	GoChain              Type = 6060
	ZenEON               Type = 7332
	Base                 Type = 8453
	Meter                Type = 18000
	Celo                 Type = 52752
	Linea                Type = 59144
	Stratis              Type = 105105
	Scroll               Type = 534352
	Metis                Type = 1001088
	Wanchain             Type = 5718350
	CronosChain          Type = 10000025
	Optimism             Type = 10000070
	NativeInjective      Type = 10000060
	XDai                 Type = 10000100
	Osmosis              Type = 10000118
	SmartBitcoinCash     Type = 10000145
	ECOChain             Type = 10000246
	Fantom               Type = 10000250
	Boba                 Type = 10000288
	KuCoinCommunityChain Type = 10000321
	Zksync               Type = 10000324
	TerraV2              Type = 10000330
	SmartChainLegacy     Type = 10000714
	AcalaEVM             Type = 10000787
	Coreum               Type = 10000990
	PolygonzkEVM         Type = 10001101
	Moonriver            Type = 10001285
	Ronin                Type = 10002020
	KavaEvm              Type = 10002222
	IoTeXEVM             Type = 10004689
	NativeCanto          Type = 10007700
	Klaytn               Type = 10008217
	AvalancheCChain      Type = 10009000
	Evmos                Type = 10009001
	ArbitrumNova         Type = 10042170
	Arbitrum             Type = 10042221
	Sommelier            Type = 11000118
	FetchAI              Type = 12000118
	Mars                 Type = 13000118
	Umee                 Type = 14000118
	Quasar               Type = 15000118
	Persistence          Type = 16000118
	Akash                Type = 17000118
	Noble                Type = 18000118
	Sei                  Type = 19000118
	Stargaze             Type = 20000118
	SmartChain           Type = 20000714
	NativeEvmos          Type = 20009001
	Tia                  Type = 21000118
	Juno                 Type = 30000118
	TBinance             Type = 30000714
	Stride               Type = 40000118
	Axelar               Type = 50000118
	Crescent             Type = 60000118
	Kujira               Type = 70000118
	Comdex               Type = 80000118
	Neutron              Type = 90000118
	Neon                 Type = 245022934
	Aurora               Type = 1323161554
)

// String returns the catalogue name of t, or its number when the default
// registry has no entry for it.
func (t Type) String() string {
	if info, err := DefaultRegistry().Get(t); err == nil {
		return info.Name
	}
	return strconv.FormatUint(uint64(t), 10)
}
