// Copyright 2025 The BC7 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bc7

import (
	"math"
)

// singlePlaneModes are searched in this order. Ties keep the earlier mode.
var singlePlaneModes = [6]int{0, 1, 2, 3, 6, 7}

// trySinglePlane searches the modes whose indexes cover all four channels.
func (c *computer[F, I, FM, IM, M]) trySinglePlane(pixels *[16][4]I, work *workInfo[F, I]) {
	m := c.m
	one := m.MakeFloat(1)
	maxFloat := m.MakeFloat(math.MaxFloat32)

	for _, mode := range singlePlaneModes {
		if !c.settings.allows(mode) {
			continue
		}
		mi := &modeInfos[mode]

		// Modes without alpha fit endpoints as if alpha were opaque. Errors
		// are still measured against the original pixels.
		var adjusted [16][4]I
		for px := range 16 {
			adjusted[px] = pixels[px]
			if mi.alpha == alphaNone {
				adjusted[px][3] = m.MakeUInt16(255)
			}
		}

		numPartitions := 1 << mi.partitionBits
		numSubsets := mi.numSubsets
		indexPrec := mi.indexBits
		numParities := mi.numParityCombinations()

		for partition := range numPartitions {
			var subsets [16]int
			for px := range 16 {
				subsets[px] = subsetOf(numSubsets, partition, px)
			}

			var selectors [3]endpointSelector[F]
			for subset := range numSubsets {
				selectors[subset] = c.newEndpointSelector(4)
			}
			for pass := range numSelectorPasses {
				for subset := range numSubsets {
					c.initSelectorPass(&selectors[subset], pass)
				}
				for px := range 16 {
					c.contributeToSelector(&selectors[subsets[px]], pass, &adjusted[px], one)
				}
			}

			var unfinished [3]unfinishedEndpoints[F]
			for subset := range numSubsets {
				unfinished[subset] = c.selectorEndpoints(&selectors[subset])
			}

			cand := candidate[F, I]{mode: mode, partition: partition}
			bestSubsetErr := [3]F{maxFloat, maxFloat, maxFloat}

			for tweak := range numTweakRounds {
				var baseEP [3][2][4]I
				for subset := range numSubsets {
					baseEP[subset] = c.finishEndpoints(&unfinished[subset], 4, tweak, indexPrec)
				}

				for pIter := range numParities {
					p := [2]bool{(pIter & 1) != 0, (pIter & 2) != 0}
					ep := baseEP

					for refine := range c.settings.refineRounds {
						for subset := range numSubsets {
							c.compressEndpoints(mode, &ep[subset], p)
						}

						var indexSelectors [3]indexSelector[F, I]
						var refiners [3]endpointRefiner[F]
						for subset := range numSubsets {
							indexSelectors[subset] = c.newIndexSelector(&ep[subset], 4, indexPrec)
							refiners[subset] = newEndpointRefiner[F](4, indexPrec)
						}

						var subsetErr [3]F
						var indexes [16]I
						for px := range 16 {
							subset := subsets[px]
							index := c.selectIndex(&indexSelectors[subset], &adjusted[px])
							c.contributeToRefiner(&refiners[subset], &adjusted[px], index, one)
							reconstructed := c.reconstruct(&indexSelectors[subset], index)
							subsetErr[subset] = m.Add(subsetErr[subset], c.computeError(&reconstructed, &pixels[px]))
							indexes[px] = index
						}

						var better16 [3]IM
						anyBetter := false
						for subset := range numSubsets {
							better := m.Less(subsetErr[subset], bestSubsetErr[subset])
							better16[subset] = m.FloatFlagToInt16(better)
							if !m.AnySet(better16[subset]) {
								continue
							}
							anyBetter = true
							m.ConditionalSet(&bestSubsetErr[subset], better, subsetErr[subset])
							for e := range 2 {
								for ch := range 4 {
									m.ConditionalSetInt16(&cand.ep[subset][e][ch], better16[subset], ep[subset][e][ch])
								}
							}
						}
						if anyBetter {
							for px := range 16 {
								m.ConditionalSetInt16(&cand.indexes[px], better16[subsets[px]], indexes[px])
							}
						}

						if refine != c.settings.refineRounds-1 {
							for subset := range numSubsets {
								ep[subset] = c.refinedEndpoints(&refiners[subset])
							}
						}
					}
				}
			}

			cand.err = bestSubsetErr[0]
			for subset := 1; subset < numSubsets; subset++ {
				cand.err = m.Add(cand.err, bestSubsetErr[subset])
			}
			c.improveIfBetter(work, &cand)
		}
	}
}

// tryDualPlane searches modes 4 and 5, whose rotated alpha channel has its own
// indexes.
func (c *computer[F, I, FM, IM, M]) tryDualPlane(pixels *[16][4]I, work *workInfo[F, I]) {
	m := c.m
	one := m.MakeFloat(1)
	maxFloat := m.MakeFloat(math.MaxFloat32)

	for mode := 4; mode <= 5; mode++ {
		if !c.settings.allows(mode) {
			continue
		}

		for rotation := range 4 {
			// The rotation swaps the alpha channel with one of red, green or
			// blue.
			alphaCh := (rotation + 3) & 3
			rgbChs := [3]int{0, 1, 2}
			if rotation > 0 {
				rgbChs[rotation-1] = 3
			}

			var rotatedRGB [16][4]I
			var alphas [16][4]I
			for px := range 16 {
				for i, ch := range rgbChs {
					rotatedRGB[px][i] = pixels[px][ch]
				}
				alphas[px][0] = pixels[px][alphaCh]
			}

			numIndexSelectors := 1
			if modeInfos[mode].hasIndexSelector {
				numIndexSelectors = 2
			}

			for indexSelector := range numIndexSelectors {
				selector := c.newEndpointSelector(3)
				for pass := range numSelectorPasses {
					c.initSelectorPass(&selector, pass)
					for px := range 16 {
						c.contributeToSelector(&selector, pass, &rotatedRGB[px], one)
					}
				}
				unfinishedRGB := c.selectorEndpoints(&selector)

				alphaRange := [2]I{alphas[0][0], alphas[0][0]}
				for px := 1; px < 16; px++ {
					alphaRange[0] = m.MinInt16(alphas[px][0], alphaRange[0])
					alphaRange[1] = m.MaxInt16(alphas[px][0], alphaRange[1])
				}

				rgbPrec, alphaPrec := 2, 2
				if mode == 4 {
					rgbPrec, alphaPrec = 2, 3
					if indexSelector != 0 {
						rgbPrec, alphaPrec = 3, 2
					}
				}

				bestRGBErr, bestAlphaErr := maxFloat, maxFloat
				var bestRGBIndexes, bestAlphaIndexes [16]I
				var bestEP [2][4]I

				for tweak := range numTweakRounds {
					rgbEP := c.finishEndpoints(&unfinishedRGB, 3, tweak, rgbPrec)
					alphaEP := c.tweakAlpha(alphaRange, tweak, alphaPrec)

					for refine := range c.settings.refineRounds {
						c.compressDualPlaneEndpoints(mode, &rgbEP, &alphaEP)

						rgbSelector := c.newIndexSelector(&rgbEP, 3, rgbPrec)
						alphaEP4 := [2][4]I{{alphaEP[0]}, {alphaEP[1]}}
						alphaSelector := c.newIndexSelector(&alphaEP4, 1, alphaPrec)
						rgbRefiner := newEndpointRefiner[F](3, rgbPrec)
						alphaRefiner := newEndpointRefiner[F](1, alphaPrec)

						errRGB, errAlpha := m.MakeFloat(0), m.MakeFloat(0)
						var rgbIndexes, alphaIndexes [16]I

						for px := range 16 {
							rgbIndex := c.selectIndex(&rgbSelector, &rotatedRGB[px])
							alphaIndex := c.selectIndex(&alphaSelector, &alphas[px])
							c.contributeToRefiner(&rgbRefiner, &rotatedRGB[px], rgbIndex, one)
							c.contributeToRefiner(&alphaRefiner, &alphas[px], alphaIndex, one)

							reconstructedRGB := c.reconstruct(&rgbSelector, rgbIndex)
							reconstructedAlpha := c.reconstruct(&alphaSelector, alphaIndex)

							// Measure each plane's error with the other plane
							// left as the original.
							rgba := pixels[px]
							for i, ch := range rgbChs {
								rgba[ch] = reconstructedRGB[i]
							}
							errRGB = m.Add(errRGB, c.computeError(&rgba, &pixels[px]))

							rgba = pixels[px]
							rgba[alphaCh] = reconstructedAlpha[0]
							errAlpha = m.Add(errAlpha, c.computeError(&rgba, &pixels[px]))

							rgbIndexes[px] = rgbIndex
							alphaIndexes[px] = alphaIndex
						}

						rgbBetter := m.Less(errRGB, bestRGBErr)
						alphaBetter := m.Less(errAlpha, bestAlphaErr)
						rgbBetter16 := m.FloatFlagToInt16(rgbBetter)
						alphaBetter16 := m.FloatFlagToInt16(alphaBetter)

						bestRGBErr = m.Min(errRGB, bestRGBErr)
						bestAlphaErr = m.Min(errAlpha, bestAlphaErr)

						for px := range 16 {
							m.ConditionalSetInt16(&bestRGBIndexes[px], rgbBetter16, rgbIndexes[px])
							m.ConditionalSetInt16(&bestAlphaIndexes[px], alphaBetter16, alphaIndexes[px])
						}
						for e := range 2 {
							for ch := range 3 {
								m.ConditionalSetInt16(&bestEP[e][ch], rgbBetter16, rgbEP[e][ch])
							}
							m.ConditionalSetInt16(&bestEP[e][3], alphaBetter16, alphaEP[e])
						}

						if refine != c.settings.refineRounds-1 {
							rgbEP = c.refinedEndpoints(&rgbRefiner)
							refinedAlpha := c.refinedEndpoints(&alphaRefiner)
							alphaEP = [2]I{refinedAlpha[0][0], refinedAlpha[1][0]}
						}
					}
				}

				cand := candidate[F, I]{
					mode:          mode,
					rotation:      rotation,
					indexSelector: indexSelector,
					err:           m.Add(bestRGBErr, bestAlphaErr),
				}
				// The index selector picks which plane gets the primary index
				// stream.
				if indexSelector == 0 {
					cand.indexes, cand.indexes2 = bestRGBIndexes, bestAlphaIndexes
				} else {
					cand.indexes, cand.indexes2 = bestAlphaIndexes, bestRGBIndexes
				}
				cand.ep[0] = bestEP
				c.improveIfBetter(work, &cand)
			}
		}
	}
}
