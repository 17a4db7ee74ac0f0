package universe

import "MarketDashboard/internal/model"

// Group keys.
const (
	KeyIndices        = "indices"
	KeySectoral       = "sectoral"
	KeyHeavyweights   = "heavyweights"
	KeyModelPortfolio = "model_portfolio"
	KeyGlobal         = "global"
	KeyCommodities    = "commodities"
	KeyCrypto         = "crypto"
)

// DefaultGroups returns the built-in catalogue. Heavyweights and the model
// portfolio start empty and are filled from their sheets.
func DefaultGroups() []model.Group {
	return []model.Group{
		{
			Key: KeyIndices, Title: "Indian Indices", Kind: model.KindTechnical,
			Instruments: []model.Instrument{
				{Name: "NIFTY 50", Symbol: "^NSEI"},
				{Name: "NIFTY NEXT 50", Symbol: "^NSMIDCP"},
				{Name: "NIFTY 500", Symbol: "^CRSLDX"},
				{Name: "NIFTY MIDCAP 150", Symbol: "MID150BEES.NS"},
				{Name: "NIFTY SMALLCAP 250", Symbol: "HDFCSML250.NS"},
				{Name: "NIFTY MICROCAP 250", Symbol: "MICROS250.NS"},
				{Name: "INDIA VIX", Symbol: "^INDIAVIX"},
			},
		},
		{
			Key: KeySectoral, Title: "Sectoral Indices", Kind: model.KindTechnical,
			Instruments: []model.Instrument{
				{Name: "NIFTY AUTO", Symbol: "^CNXAUTO"},
				{Name: "NIFTY BANK", Symbol: "^NSEBANK"},
				{Name: "NIFTY FIN SERVICE", Symbol: "NIFTY_FIN_SERVICE.NS"},
				{Name: "NIFTY FMCG", Symbol: "^CNXFMCG"},
				{Name: "NIFTY IT", Symbol: "^CNXIT"},
				{Name: "NIFTY MEDIA", Symbol: "^CNXMEDIA"},
				{Name: "NIFTY METAL", Symbol: "^CNXMETAL"},
				{Name: "NIFTY PHARMA", Symbol: "^CNXPHARMA"},
				{Name: "NIFTY REALTY", Symbol: "^CNXREALTY"},
				{Name: "NIFTY HEALTHCARE", Symbol: "^NIFTYHEALTHCARE"},
				{Name: "NIFTY PSU BANK", Symbol: "^CNXPSUBANK"},
				{Name: "NIFTY PVT BANK", Symbol: "NIFTY_PVT_BANK.NS"},
				{Name: "NIFTY CONSUMER", Symbol: "^CNXCONSUM"},
				{Name: "NIFTY OIL & GAS - ETF", Symbol: "OILIETF.NS"},
				{Name: "NIFTY CHEMICALS", Symbol: "^NIFTYCHEM"},
				{Name: "NIFTY PSE", Symbol: "^CNXPSE"},
			},
		},
		{Key: KeyHeavyweights, Title: "Heavyweight Stocks", Kind: model.KindTechnical},
		{Key: KeyModelPortfolio, Title: "Model Portfolio", Kind: model.KindTechnical},
		{
			Key: KeyGlobal, Title: "Global Indices", Kind: model.KindGeneric,
			Instruments: []model.Instrument{
				{Name: "S&P 500", Symbol: "^GSPC"},
				{Name: "NASDAQ", Symbol: "^IXIC"},
				{Name: "Germany (DAX)", Symbol: "^GDAXI"},
				{Name: "Japan (Nikkei)", Symbol: "^N225"},
				{Name: "Hong Kong (Hang Seng)", Symbol: "^HSI"},
				{Name: "China (Shanghai)", Symbol: "000001.SS"},
				{Name: "UK (FTSE 100)", Symbol: "^FTSE"},
			},
		},
		{
			Key: KeyCommodities, Title: "Commodities", Kind: model.KindGeneric,
			Instruments: []model.Instrument{
				{Name: "Gold", Symbol: "GC=F"},
				{Name: "Silver", Symbol: "SI=F"},
				{Name: "Crude Oil (WTI)", Symbol: "CL=F"},
				{Name: "Copper", Symbol: "HG=F"},
				{Name: "Natural Gas", Symbol: "NG=F"},
			},
		},
		{
			Key: KeyCrypto, Title: "Crypto", Kind: model.KindGeneric,
			Instruments: []model.Instrument{
				{Name: "Bitcoin", Symbol: "BTC-USD"},
				{Name: "Ethereum", Symbol: "ETH-USD"},
				{Name: "Solana", Symbol: "SOL-USD"},
				{Name: "BNB", Symbol: "BNB-USD"},
				{Name: "XRP", Symbol: "XRP-USD"},
			},
		},
	}
}
